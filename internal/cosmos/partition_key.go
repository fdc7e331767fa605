package cosmos

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
)

// PartitionKeyFor builds the partition key value of a record from the
// container's partition-key paths. One path yields a single key, several
// paths a hierarchical key. Absent fields become JSON null.
func PartitionKeyFor(paths []string, fields map[string]any) (azcosmos.PartitionKey, error) {
	if len(paths) == 0 {
		return azcosmos.NullPartitionKey, nil
	}

	pk := azcosmos.NewPartitionKey()
	for _, p := range paths {
		segments, err := splitPath(p)
		if err != nil {
			return azcosmos.PartitionKey{}, err
		}

		value, found := lookup(fields, segments)
		if !found {
			pk = pk.AppendNull()
			continue
		}

		switch v := value.(type) {
		case nil:
			pk = pk.AppendNull()
		case string:
			pk = pk.AppendString(v)
		case bool:
			pk = pk.AppendBool(v)
		case json.Number:
			f, err := numberValue(v)
			if err != nil {
				return azcosmos.PartitionKey{}, fmt.Errorf("partition key %s: %w", p, err)
			}
			pk = pk.AppendNumber(f)
		case float64:
			pk = pk.AppendNumber(v)
		default:
			return azcosmos.PartitionKey{}, fmt.Errorf("partition key %s must be a string, number, boolean or null, got %T", p, value)
		}
	}
	return pk, nil
}

// maxExactInteger is the largest integer a float64 holds without rounding.
const maxExactInteger = 1 << 53

// numberValue converts n for the partition key header, which carries numbers
// as float64. Integers that would be rounded are rejected, since the stored
// document keeps the exact digits and the service would see a key mismatch.
func numberValue(n json.Number) (float64, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil || i > maxExactInteger || i < -maxExactInteger {
			return 0, fmt.Errorf("integer %s cannot be represented exactly", s)
		}
		return float64(i), nil
	}
	return n.Float64()
}

func splitPath(p string) ([]string, error) {
	if !strings.HasPrefix(p, "/") || len(p) < 2 {
		return nil, fmt.Errorf("invalid partition key path %q: must start with '/'", p)
	}
	segments := strings.Split(p[1:], "/")
	for _, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("invalid partition key path %q: empty segment", p)
		}
	}
	return segments, nil
}

func lookup(fields map[string]any, segments []string) (any, bool) {
	var current any = fields
	for _, s := range segments {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[s]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
