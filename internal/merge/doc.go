// Package merge reconciles the three normalized sources into one
// consolidated table keyed by (canonical country, year).
//
// Country identity is canonicalized before the join so that the same
// real-world country spelled differently across sources lands on one
// key. The join itself is a generic full outer join: a key present in
// any source produces one record, with absent metrics left missing.
package merge
