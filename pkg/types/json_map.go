package types

// JSONMap holds free-form JSON payloads such as gateway payment results.
// The order flow stores it verbatim and never interprets the contents.
type JSONMap map[string]any
