// Package resources loads and deletes ownership-guarded documents such as
// courses and reviews. Only the owning fields are read; everything else about
// the catalog lives outside this package.
package resources
