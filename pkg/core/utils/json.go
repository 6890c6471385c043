package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// DecodeLenient unmarshals model-produced JSON into out, tolerating the
// damage LLMs commonly do to tool arguments. Strategies in order:
//
//  1. Standard JSON
//  2. json-repair (single quotes, trailing commas, unclosed braces,
//     markdown fences)
//  3. Hjson (unquoted keys, comments, optional commas)
func DecodeLenient(raw string, out interface{}) error {
	if err := json.Unmarshal([]byte(raw), out); err == nil {
		return nil
	}

	if repaired, err := jsonrepair.RepairJSON(raw); err == nil {
		if err := json.Unmarshal([]byte(repaired), out); err == nil {
			return nil
		}
	}

	if err := hjson.Unmarshal([]byte(raw), out); err == nil {
		return nil
	}
	return fmt.Errorf("ARG_DECODE_FAILED: input is not JSON, repairable JSON, or Hjson")
}
