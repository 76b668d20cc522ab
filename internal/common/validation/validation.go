package validation

import (
	"fmt"
	"strings"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxDisplayNameLength = 64
	MaxURLLength         = 2048

	MinTitleLength = 1
)

// Difficulty and rider type vocabularies. Spot and criteria fields are
// validated against these on write.
var (
	ValidDifficulties = []string{"beginner", "intermediate", "advanced", "pro"}
	ValidRiderTypes   = []string{"skateboard", "bmx", "scooter", "inline", "mtb"}
	ValidSpotTypes    = []string{"street", "park", "diy", "transition", "ledge", "rail", "stairs", "gap", "flat"}
)

func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if len(title) < MinTitleLength {
		return fmt.Errorf("title cannot be empty")
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("title cannot exceed %d characters", MaxTitleLength)
	}
	return nil
}

func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("description cannot exceed %d characters", MaxDescriptionLength)
	}
	return nil
}

func ValidateDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("display name cannot be empty")
	}
	if len(name) > MaxDisplayNameLength {
		return fmt.Errorf("display name cannot exceed %d characters", MaxDisplayNameLength)
	}
	return nil
}

func ValidateURL(url string) error {
	if url == "" {
		return nil
	}
	if len(url) > MaxURLLength {
		return fmt.Errorf("url cannot exceed %d characters", MaxURLLength)
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("url must start with http:// or https://")
	}
	return nil
}

func IsValidDifficulty(difficulty string) bool {
	return contains(ValidDifficulties, difficulty)
}

func IsValidRiderType(riderType string) bool {
	return contains(ValidRiderTypes, riderType)
}

func IsValidSpotType(spotType string) bool {
	return contains(ValidSpotTypes, spotType)
}

// ValidateLatLng checks coordinate ranges in degrees.
func ValidateLatLng(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateKickoutRisk checks the 1..10 risk scale.
func ValidateKickoutRisk(risk float64) error {
	if risk < 1 || risk > 10 {
		return fmt.Errorf("kickout risk must be between 1 and 10")
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
