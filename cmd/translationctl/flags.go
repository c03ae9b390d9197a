package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/translation-qa-api/internal/dto"
)

// parseTargets reads "id:Name" pairs. The name may be omitted.
func parseTargets(values []string) ([]dto.TargetLanguage, error) {
	targets := make([]dto.TargetLanguage, 0, len(values))
	for _, value := range values {
		idPart, name, _ := strings.Cut(strings.TrimSpace(value), ":")
		id, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid --lang %q: expected id:Name", value)
		}
		targets = append(targets, dto.TargetLanguage{ID: id, Name: strings.TrimSpace(name)})
	}
	return targets, nil
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid key id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
