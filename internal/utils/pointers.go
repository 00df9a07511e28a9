package utils

import "time"

func IntPtr(i int) *int {
	return &i
}

func TimePtr(t time.Time) *time.Time {
	return &t
}

func PtrInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
