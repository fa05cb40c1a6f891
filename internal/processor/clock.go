package processor

import (
	"time"

	"github.com/hearthbudget/backend/internal/types"
)

// Clock resolves the current civil date. The bill processor and the income
// allocator share one Clock so that "today" and the month boundaries never
// skew between them. Tests substitute a fixed implementation.
type Clock interface {
	Today() types.Date
}

// LocationClock is the production Clock. It anchors "today" to a fixed
// civil timezone, since the household's day rolls over in local time, not
// in UTC.
type LocationClock struct {
	Location *time.Location
}

func (c LocationClock) Today() types.Date {
	return types.DateOf(time.Now().In(c.Location))
}
