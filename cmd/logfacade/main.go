// Command logfacade inspects the fallback logging configuration and emits
// test messages through a logfacade facade backed by zerolog, zap or logrus.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
