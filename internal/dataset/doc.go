// Package dataset reads dataset files: JSON arrays of flat objects.
//
// Records keep the exact bytes of each array element so the destination
// receives the object verbatim. Numbers are decoded as json.Number, never as
// float64, so the stored document keeps every digit. Partition key values are
// sent as float64; integers beyond 2^53 in a partition-key field are rejected
// for that record rather than rounded.
package dataset
