// Package tools defines tool contracts and implementations.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - File tools: list_files, get_file_content, overwrite_file,
//     replace_str_file (unified diff output).
//   - run_python_file: time-limited script execution in the scoped directory.
//   - Todo tools: todo_add, todo_list, todo_done over todos.json.
//
// All paths are relative to the scoped directory; the scope root is injected
// by fsops, never supplied by the model.
package tools
