package aggregate

import (
	"testing"
	"time"

	"auction-marketplace/internal/domain/event"
	apperrors "auction-marketplace/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMember(t *testing.T) *Member {
	t.Helper()
	member, err := NewMember("Jane", "Doe", "+4512345678", "Main St 1", "8000", "Aarhus", "jane@example.com")
	require.NoError(t, err)
	return member
}

func TestNewMember(t *testing.T) {
	t.Run("valid inputs", func(t *testing.T) {
		member := validMember(t)

		assert.NotEmpty(t, member.ID())
		assert.Equal(t, 0, member.CurrentRating())
		assert.Empty(t, member.Bids())

		events := member.UncommittedEvents()
		require.Len(t, events, 1)
		assert.Equal(t, event.KindMemberRegistered, events[0].Kind())
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		cases := []struct {
			name                                               string
			firstName, lastName, phone, street, zip, city, email string
		}{
			{"blank first name", "", "Doe", "+45", "Main St", "8000", "Aarhus", "j@x.dk"},
			{"blank last name", "Jane", " ", "+45", "Main St", "8000", "Aarhus", "j@x.dk"},
			{"blank phone", "Jane", "Doe", "", "Main St", "8000", "Aarhus", "j@x.dk"},
			{"blank street", "Jane", "Doe", "+45", "", "8000", "Aarhus", "j@x.dk"},
			{"blank zip", "Jane", "Doe", "+45", "Main St", " ", "Aarhus", "j@x.dk"},
			{"blank city", "Jane", "Doe", "+45", "Main St", "8000", "", "j@x.dk"},
			{"malformed email", "Jane", "Doe", "+45", "Main St", "8000", "Aarhus", "not-an-email"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				member, err := NewMember(tc.firstName, tc.lastName, tc.phone, tc.street, tc.zip, tc.city, tc.email)
				require.Error(t, err)
				assert.Nil(t, member)
			})
		}
	})
}

func TestRate(t *testing.T) {
	t.Run("both range ends are valid", func(t *testing.T) {
		member := validMember(t)

		require.NoError(t, member.Rate("rater-1", 1))
		require.NoError(t, member.Rate("rater-2", 5))
		assert.Equal(t, 3, member.CurrentRating())
	})

	t.Run("out of range rejected and rating unchanged", func(t *testing.T) {
		member := validMember(t)
		require.NoError(t, member.Rate("rater-1", 4))

		for _, stars := range []int{0, 6, -1, 100} {
			err := member.Rate("rater-2", stars)
			require.Error(t, err)

			appErr, ok := err.(*apperrors.ApplicationError)
			require.True(t, ok)
			assert.Equal(t, 400, appErr.Status)
		}

		assert.Equal(t, 4, member.CurrentRating())
		assert.Len(t, member.Ratings(), 1)
	})

	t.Run("current rating is the truncated mean", func(t *testing.T) {
		member := validMember(t)

		require.NoError(t, member.Rate("a", 5))
		require.NoError(t, member.Rate("b", 4))
		require.NoError(t, member.Rate("c", 4))
		// (5+4+4)/3 = 4.33 truncates to 4
		assert.Equal(t, 4, member.CurrentRating())

		require.NoError(t, member.Rate("d", 1))
		// (5+4+4+1)/4 = 3.5 truncates to 3
		assert.Equal(t, 3, member.CurrentRating())
	})

	t.Run("raises an event with the new rating", func(t *testing.T) {
		member := validMember(t)
		member.MarkEventsCommitted()

		require.NoError(t, member.Rate("rater-1", 5))

		events := member.UncommittedEvents()
		require.Len(t, events, 1)
		rated, ok := events[0].(*event.MemberRated)
		require.True(t, ok)
		assert.Equal(t, 5, rated.Stars)
		assert.Equal(t, 5, rated.NewRating)
	})
}

func TestMemberChanges(t *testing.T) {
	t.Run("no-op mutations fail without touching last modified", func(t *testing.T) {
		member := validMember(t)
		before := member.LastModified()

		require.Error(t, member.ChangeEmail("jane@example.com"))
		require.Error(t, member.ChangePhone("+4512345678"))
		require.Error(t, member.ChangeName("Jane", "Doe"))
		require.Error(t, member.ChangeAddress("Main St 1", "8000", "Aarhus"))
		assert.Equal(t, before, member.LastModified())
	})

	t.Run("valid changes apply", func(t *testing.T) {
		member := validMember(t)

		require.NoError(t, member.ChangeEmail("jane.doe@example.com"))
		assert.Equal(t, "jane.doe@example.com", member.Email().String())

		require.NoError(t, member.ChangePhone("+4587654321"))
		require.NoError(t, member.ChangeName("Janet", "Doe"))
		require.NoError(t, member.ChangeAddress("Side St 2", "8200", "Aarhus N"))
		assert.Equal(t, Address{Street: "Side St 2", Zip: "8200", City: "Aarhus N"}, member.Address())
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		member := validMember(t)
		require.Error(t, member.ChangeEmail("nope"))
	})
}

func TestAddBid(t *testing.T) {
	member := validMember(t)

	bid := Bid{AuctionID: "auction-1", MemberID: member.ID(), Price: 150, Timestamp: time.Now()}
	require.NoError(t, member.AddBid(bid))
	assert.Equal(t, []Bid{bid}, member.Bids())

	t.Run("rejects a bid for another member", func(t *testing.T) {
		err := member.AddBid(Bid{AuctionID: "auction-1", MemberID: "someone-else", Price: 200})
		require.Error(t, err)
	})

	t.Run("rejects a bid without an auction", func(t *testing.T) {
		err := member.AddBid(Bid{MemberID: member.ID(), Price: 200})
		require.Error(t, err)
	})
}

func TestValues(t *testing.T) {
	t.Run("addresses compare by value", func(t *testing.T) {
		a, err := NewAddress("Main St 1", "8000", "Aarhus")
		require.NoError(t, err)
		b, err := NewAddress("Main St 1", "8000", "Aarhus")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("email validation", func(t *testing.T) {
		_, err := NewEmail("jane@example.com")
		require.NoError(t, err)

		for _, bad := range []string{"", "jane", "jane@", "@example.com", "jane @example.com"} {
			_, err := NewEmail(bad)
			require.Error(t, err, "expected %q to be rejected", bad)
		}
	})
}
