package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmmoBox(t *testing.T) {
	t.Parallel()

	t.Run("Starting Loadout Is One Cube Per Color", func(t *testing.T) {
		t.Parallel()
		pb := NewPlayerBoard()
		assert.Equal(t, 1, pb.Ammo.Count(AmmoRed))
		assert.Equal(t, 1, pb.Ammo.Count(AmmoBlue))
		assert.Equal(t, 1, pb.Ammo.Count(AmmoYellow))
	})

	t.Run("Add Clamps At Three Per Color", func(t *testing.T) {
		t.Parallel()
		box := AmmoBox{}
		for i := 0; i < 5; i++ {
			box.Add(AmmoRed)
		}
		assert.Equal(t, MaxAmmoPerColor, box.Count(AmmoRed))
		assert.Equal(t, 0, box.Count(AmmoBlue))
	})

	t.Run("Spend Reports Failure On An Empty Color", func(t *testing.T) {
		t.Parallel()
		box := AmmoBox{Blue: 1}
		assert.True(t, box.Spend(AmmoBlue))
		assert.False(t, box.Spend(AmmoBlue))
		assert.False(t, box.Spend(AmmoRed))
	})
}

func TestAddDamage(t *testing.T) {
	t.Parallel()

	t.Run("Dealer Marks Convert To Damage First", func(t *testing.T) {
		t.Parallel()
		pb := NewPlayerBoard()
		pb.AddMark("alice", 2)
		pb.AddMark("bob", 1)

		pb.AddDamage("alice", 1)

		assert.Equal(t, []string{"alice", "alice", "alice"}, pb.Damages)
		assert.Equal(t, []string{"bob"}, pb.Marks)
	})

	t.Run("Zero Damage Leaves Marks Untouched", func(t *testing.T) {
		t.Parallel()
		pb := NewPlayerBoard()
		pb.AddMark("alice", 2)

		pb.AddDamage("alice", 0)

		assert.Empty(t, pb.Damages)
		assert.Equal(t, 2, pb.MarkCount("alice"))
	})

	t.Run("Damage Never Grows Past Twelve", func(t *testing.T) {
		t.Parallel()
		pb := NewPlayerBoard()
		pb.AddDamage("alice", 10)
		pb.AddMark("bob", 3)
		pb.AddDamage("bob", 5)

		assert.Equal(t, MaxDamage, pb.DamageCount())
		assert.Empty(t, pb.Marks)
	})
}

func TestAddMark(t *testing.T) {
	t.Parallel()
	pb := NewPlayerBoard()
	pb.AddMark("alice", 5)
	pb.AddMark("bob", 1)

	assert.Equal(t, MaxMarksPerDealer, pb.MarkCount("alice"))
	assert.Equal(t, 1, pb.MarkCount("bob"))
}

func TestDeathAndKiller(t *testing.T) {
	t.Parallel()

	t.Run("Ten Damage Is Not Dead Yet", func(t *testing.T) {
		t.Parallel()
		pb := NewPlayerBoard()
		pb.AddDamage("alice", 10)
		assert.False(t, pb.IsDead())
	})

	t.Run("Eleventh Entry Is The Killshot", func(t *testing.T) {
		t.Parallel()
		pb := NewPlayerBoard()
		pb.AddDamage("alice", 10)
		pb.AddDamage("bob", 1)

		require.True(t, pb.IsDead())
		killer, overkill := pb.Killer()
		assert.Equal(t, "bob", killer)
		assert.False(t, overkill)
	})

	t.Run("Twelfth Entry Is The Overkill", func(t *testing.T) {
		t.Parallel()
		pb := NewPlayerBoard()
		pb.AddDamage("alice", 10)
		pb.AddDamage("bob", 2)

		killer, overkill := pb.Killer()
		assert.Equal(t, "bob", killer)
		assert.True(t, overkill)
	})

	t.Run("Killer On A Live Board Is Empty", func(t *testing.T) {
		t.Parallel()
		pb := NewPlayerBoard()
		pb.AddDamage("alice", 3)
		killer, overkill := pb.Killer()
		assert.Empty(t, killer)
		assert.False(t, overkill)
	})
}

func TestReset(t *testing.T) {
	t.Parallel()
	pb := NewPlayerBoard()
	pb.AddDamage("alice", 11)
	pb.AddMark("bob", 2)

	pb.Reset()

	assert.Empty(t, pb.Damages)
	assert.Equal(t, 1, pb.Skulls)
	// marks survive a death
	assert.Equal(t, 2, pb.MarkCount("bob"))
}

func TestFlip(t *testing.T) {
	t.Parallel()

	t.Run("Clean Board Flips And Loses Its Skulls", func(t *testing.T) {
		t.Parallel()
		pb := NewPlayerBoard()
		pb.Skulls = 2
		pb.Flip()
		assert.True(t, pb.Flipped)
		assert.Zero(t, pb.Skulls)
	})

	t.Run("Damaged Board Does Not Flip", func(t *testing.T) {
		t.Parallel()
		pb := NewPlayerBoard()
		pb.AddDamage("alice", 1)
		pb.Skulls = 2
		pb.Flip()
		assert.False(t, pb.Flipped)
		assert.Equal(t, 2, pb.Skulls)
	})
}

func TestDamageOrder(t *testing.T) {
	t.Parallel()

	t.Run("Strongest Dealer First", func(t *testing.T) {
		t.Parallel()
		pb := NewPlayerBoard()
		pb.AddDamage("alice", 1)
		pb.AddDamage("bob", 3)
		pb.AddDamage("carol", 2)

		assert.Equal(t, []string{"bob", "carol", "alice"}, pb.DamageOrder())
	})

	t.Run("Ties Go To The Earliest Dealer", func(t *testing.T) {
		t.Parallel()
		pb := NewPlayerBoard()
		pb.AddDamage("bob", 2)
		pb.AddDamage("alice", 2)
		pb.AddDamage("bob", 1)
		pb.AddDamage("alice", 1)

		assert.Equal(t, []string{"bob", "alice"}, pb.DamageOrder())
	})

	t.Run("Empty Board Has No Order", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, NewPlayerBoard().DamageOrder())
	})
}

func TestFirstBlood(t *testing.T) {
	t.Parallel()
	pb := NewPlayerBoard()
	assert.Empty(t, pb.FirstBlood())

	pb.AddDamage("carol", 1)
	pb.AddDamage("alice", 4)
	assert.Equal(t, "carol", pb.FirstBlood())
}
