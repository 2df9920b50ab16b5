package service

import (
	"strconv"
	"strings"

	"github.com/outlierlens/outlierlens-go/internal/model"
)

// Classify buckets a video by its ISO-8601 duration descriptor.
//
// A descriptor with any minute-or-larger component is regular. A
// seconds-only descriptor of 60 seconds or less is a short. Malformed
// descriptors classify as regular; this function never fails.
//
// Known mismatch with platform convention: shorts of 60-90 seconds are
// encoded with a minute component ("PT1M21S") and classify as regular here.
func Classify(duration string) model.Category {
	if !strings.Contains(duration, "PT") || strings.Contains(duration, "M") {
		return model.CategoryRegular
	}

	seconds := 0
	if strings.Contains(duration, "S") {
		raw := strings.TrimSuffix(strings.SplitN(duration, "PT", 2)[1], "S")
		n, err := strconv.Atoi(raw)
		if err != nil {
			return model.CategoryRegular
		}
		seconds = n
	}

	if seconds <= 60 {
		return model.CategoryShort
	}
	return model.CategoryRegular
}
