package response

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func datePtrString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
