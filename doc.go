// Package main provides the entry point for the shooting-sport membership
// portal backend. It runs a web server using the Fiber framework that
// serves registration, login with optional two-factor authentication,
// role-based access control with permission inheritance, login session
// management, and an append-only audit trail through a REST API. The
// application uses gorm for data persistence.
package main
