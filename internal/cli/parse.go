package cli

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func optionalDate(raw string) (*types.Date, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return &d, nil
}

func optionalTime(raw string) (*types.TimeOfDay, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := types.ParseTimeOfDay(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q: %w", raw, err)
	}
	return &t, nil
}

func optionalString(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}
