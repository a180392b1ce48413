package domain

// Default configuration values
const (
	DefaultSlotStepMinutes = 30
	DefaultBufferMinutes   = 0

	// Built-in fallback window used when neither the master nor the salon
	// has any schedule configured. Exists only to keep the system usable
	// during incomplete onboarding; resolved hours carry SourceBuiltinDefault
	// so it is distinguishable from an explicit schedule.
	DefaultOpenMinutes  = 9 * 60  // 09:00
	DefaultCloseMinutes = 19 * 60 // 19:00
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours
	MinBufferMinutes   = 0
	MaxBufferMinutes   = 120
	MaxBlockLabelLen   = 200
	MaxBulkRangeDays   = 31
)

// AllowedSlotSteps допустимые значения шага сетки слотов
var AllowedSlotSteps = []int{10, 15, 20, 30, 60}

// IsAllowedSlotStep проверяет допустимость шага сетки слотов
func IsAllowedSlotStep(step int) bool {
	for _, s := range AllowedSlotSteps {
		if s == step {
			return true
		}
	}
	return false
}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
