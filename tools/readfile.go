package tools

import (
	"context"
	"fmt"
	"os"

	"github.com/scottsen/groqqy"
	"github.com/scottsen/groqqy/schema"
)

// ReadFile returns a tool that reads and returns a file's contents.
func ReadFile() groqqy.Tool {
	return groqqy.NewToolFunc(
		"read_file",
		"Read and return the contents of a file",
		schema.Object(map[string]*schema.Property{
			"file_path": schema.String("Path of the file to read"),
		}, "file_path"),
		func(ctx context.Context, args map[string]any) (string, error) {
			path, _ := args["file_path"].(string)
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Sprintf("Error reading file: %v", err), nil
			}
			return string(data), nil
		},
	)
}
