// Command todo is a minimal todo list manager storing items in a JSON file.
// It is the companion app the coding agent operates on.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Isaac-Flath/agent-example/internal/todo"
)

var todoFile string

func main() {
	root := &cobra.Command{
		Use:           "todo",
		Short:         "Minimal JSON-backed todo list",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&todoFile, "file", todo.DefaultFile, "path to the todos JSON file")

	root.AddCommand(addCmd())
	root.AddCommand(listCmd())
	root.AddCommand(doneCmd())
	root.AddCommand(watchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func store() *todo.Store {
	return todo.NewStore(todoFile)
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add TASK",
		Short: "Add a new todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store().Add(args[0]); err != nil {
				return err
			}
			fmt.Println(todo.StyleAdded(args[0]))
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := store().Load()
			if err != nil {
				return err
			}
			fmt.Println(todo.Render(items))
			return nil
		},
	}
}

func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done INDEX",
		Short: "Mark a todo as complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Println(todo.StyleError("❌ Invalid todo number"))
				return nil
			}
			task, err := store().Complete(index)
			if err != nil {
				if errors.Is(err, todo.ErrInvalidIndex) {
					fmt.Println(todo.StyleError("❌ Invalid todo number"))
					return nil
				}
				return err
			}
			fmt.Println(todo.StyleCompleted(task))
			return nil
		},
	}
}
