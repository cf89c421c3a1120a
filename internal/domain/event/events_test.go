package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("round trips every kind", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Millisecond)

		events := []DomainEvent{
			&AuctionCreated{ID: "e1", AuctionID: "a1", OwnerMemberID: "m1", Title: "Clock", StartingPrice: 100, EndTime: now.Add(48 * time.Hour), Timestamp: now},
			&BidPlaced{ID: "e2", AuctionID: "a1", OwnerMemberID: "m1", BidderID: "m2", Price: 150, Timestamp: now},
			&MemberRegistered{ID: "e3", MemberID: "m2", FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Timestamp: now},
			&MemberRated{ID: "e4", MemberID: "m2", RaterID: "m1", Stars: 5, NewRating: 5, Timestamp: now},
		}

		for _, original := range events {
			payload, err := Encode(original)
			require.NoError(t, err)

			decoded, err := Decode(original.Kind(), payload)
			require.NoError(t, err)
			assert.Equal(t, original, decoded)
		}
	})

	t.Run("unknown kind is an error", func(t *testing.T) {
		_, err := Decode("SomethingElse", []byte(`{}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown event kind")
	})

	t.Run("malformed payload is an error", func(t *testing.T) {
		_, err := Decode(KindBidPlaced, []byte(`{not json`))
		require.Error(t, err)
	})
}
