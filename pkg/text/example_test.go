package text_test

import (
	"context"
	"fmt"

	"github.com/walteh/reserialize/pkg/pattern"
	"github.com/walteh/reserialize/pkg/text"
)

func ExampleRegexpReplacer_Rewrite() {
	// Create a replacer
	replacer := text.NewRegexpReplacer()

	// Compile the find/replace pair
	pat := pattern.MustCompile(`(\w+)@old\.test`, "$1@new.test")

	// Apply it to a small dump
	result, err := replacer.Rewrite(context.Background(), "INSERT INTO users VALUES ('ann@old.test'),('bo@old.test');", pat)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// Modified: INSERT INTO users VALUES ('ann@new.test'),('bo@new.test');
	// Changes: 2
	// Was Modified: true
}
