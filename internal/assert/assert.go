package assert

import "fmt"

func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
}

func NotEmptyStr(str string) {
	if str == "" {
		panic("expected string to be non-empty")
	}
}

func NotEmptySlice[T any](name string, s []T) {
	if len(s) == 0 {
		panic(fmt.Sprintf("expected %s to be non-empty", name))
	}
}
