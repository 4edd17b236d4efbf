package wsbridge_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jostberg/wsbridge"
)

func ExampleOnce() {
	done := wsbridge.Once(func(n wsbridge.Notifier) {
		time.AfterFunc(10*time.Millisecond, n)
	})
	<-done
	fmt.Println("fired")
	// Output: fired
}

func ExampleWait() {
	err := wsbridge.Wait(context.Background(), func(n wsbridge.Notifier) {
		time.AfterFunc(10*time.Millisecond, n)
	})
	fmt.Println(err)
	// Output: <nil>
}

func ExampleClassify() {
	for _, data := range []any{"hello", []byte{0xCA, 0xFE}} {
		msg, err := wsbridge.Classify(data)
		if err != nil {
			fmt.Println("dropped:", err)
			continue
		}
		fmt.Println(msg)
	}
	// Output:
	// text("hello")
	// binary(2B)
}
