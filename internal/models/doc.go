// Package models declares the JSON wire types exchanged between the admin
// console and the admin API: entity DTOs, the paginated list envelope,
// query/filter parameters and action results.
//
// All JSON field names are camelCase. Timestamps are RFC 3339.
package models
