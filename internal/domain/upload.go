package domain

// EntityType discriminates which kind of record an uploaded asset attaches
// to. Exactly one field on exactly one record is updated per upload; an
// unknown entity type is a permanent job failure, never retried.
type EntityType string

const (
	EntityTypeCase   EntityType = "case"
	EntityTypeTenant EntityType = "tenant"
	EntityTypeUser   EntityType = "user"
)

// ValidEntityType reports whether e is a member of the entity enumeration.
func ValidEntityType(e EntityType) bool {
	switch e {
	case EntityTypeCase, EntityTypeTenant, EntityTypeUser:
		return true
	}
	return false
}
