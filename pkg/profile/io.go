package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveProfiles writes profiles to disk as a JSON array.
func SaveProfiles(path string, profiles []EmployeeProfile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for profiles: %w", err)
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling profiles: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profiles: %w", err)
	}

	return nil
}

// LoadProfiles reads a JSON array of profiles from disk.
func LoadProfiles(path string) ([]EmployeeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles: %w", err)
	}

	var profiles []EmployeeProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("unmarshaling profiles: %w", err)
	}

	for i, p := range profiles {
		if p.EmployeeID == "" {
			return nil, fmt.Errorf("profile %d: employee_id is required", i)
		}
	}

	return profiles, nil
}
