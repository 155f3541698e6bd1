package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioService/pkg/ptr"
)

func TestLocationFromRoom(t *testing.T) {
	assert.Equal(t, "Downtown", LocationFromRoom("Studio A - Downtown"))
	assert.Equal(t, "Uptown", LocationFromRoom("Studio A - East - Uptown"))
	assert.Equal(t, "Studio A", LocationFromRoom("Studio A"))
	assert.Equal(t, "Studio-A", LocationFromRoom("Studio-A"))
}

func TestFilterSessions_AndSemantics(t *testing.T) {
	date := mustDate(t, "2025-03-10")
	s1 := &Session{ID: "1", Name: "Reformer", Trainer: "X", Room: "Room 1 - Downtown", Date: date}
	s2 := &Session{ID: "2", Name: "Mat", Trainer: "X", Room: "Room 2 - Downtown", Date: date}
	s3 := &Session{ID: "3", Name: "Reformer", Trainer: "Z", Room: "Room 1 - Uptown", Date: date}
	s4 := &Session{ID: "4", Name: "Reformer", Trainer: "X", Room: "Room 3 - Uptown", Date: mustDate(t, "2025-03-11")}
	all := []*Session{s1, s2, s3, s4}

	got := FilterSessions(all, SessionFilter{Trainer: ptr.Ptr("X"), Activity: ptr.Ptr("Reformer")})
	assert.Equal(t, []*Session{s1, s4}, got)

	got = FilterSessions(all, SessionFilter{Location: ptr.Ptr("Uptown"), Date: &date})
	assert.Equal(t, []*Session{s3}, got)

	assert.Equal(t, all, FilterSessions(all, SessionFilter{}))
	assert.Empty(t, FilterSessions(all, SessionFilter{Trainer: ptr.Ptr("Nobody")}))
}
