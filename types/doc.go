// Package types provides core types used across the extractflow library.
// This package has ZERO dependencies on other extractflow packages to avoid
// circular imports. All other packages should import types from here.
package types
