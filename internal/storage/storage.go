// Package storage keeps slots as objects in S3-compatible storage.
//
// Each slot is a single JSON object named <prefix><key>.json, so a bucket
// can be browsed and backed up with ordinary object tooling.
package storage
