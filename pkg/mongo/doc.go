// Package mongo manages the MongoDB client used by the document-backed
// grant stores: environment-driven configuration, connection with startup
// retries, and a health check helper.
package mongo
