// Package custodytest provides helpers and mocks for testing custody
// extensions.
package custodytest
