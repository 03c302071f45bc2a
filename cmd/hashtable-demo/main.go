package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/lojhan/chainkv/internal/hashtable"
)

func main() {
	verbose := flag.Bool("v", false, "Log table resizes")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer logger.Sync()
	}

	table := hashtable.New[int](hashtable.WithLogger(logger))

	table.Insert("hello", 2)
	for i := 2; i <= 20; i++ {
		table.Insert(fmt.Sprintf("hello%d", i), i*2)
	}

	for _, key := range []string{"hello1", "hello2", "hello3", "hello4", "hello5", "hello10"} {
		table.Delete(key)
	}

	if err := table.Dump(os.Stdout); err != nil {
		log.Fatalf("Failed to dump table: %v", err)
	}

	fmt.Printf("\nentries=%d capacity=%d load=%.3f\n\n", table.Len(), table.Capacity(), table.LoadFactor())
	for _, key := range []string{"hello", "hello2", "hello3", "hello4", "hello5", "hello6", "hello7", "hello8", "hello9", "hello10"} {
		if value, ok := table.Get(key); ok {
			fmt.Printf("%s: %d\n", key, value)
		} else {
			fmt.Printf("%s: (nil)\n", key)
		}
	}
}
