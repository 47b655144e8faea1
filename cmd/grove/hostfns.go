package main

import (
	"fmt"
	"time"

	"github.com/groveembed/grove/pkg/value"
)

var clockStart = time.Now()

// hostPrint prints every argument, space-separated, followed by a
// newline — Grove's equivalent of Lua's print().
func hostPrint(args []value.Value) (value.Value, error) {
	for i, a := range args {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(a.String())
	}
	fmt.Println()
	return value.Nil, nil
}

// hostClock returns seconds elapsed since the CLI process started.
func hostClock(args []value.Value) (value.Value, error) {
	return value.Number(time.Since(clockStart).Seconds()), nil
}
