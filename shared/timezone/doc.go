// Package timezone keeps the application clock and client zone handling in one place.
//
//	now := timezone.Now()                                   // current time in the app timezone
//	formatted := timezone.Format(t, time.RFC3339)           // RFC 3339 with the app offset
//	due := invoice.DueDate.In(timezone.ClientLocation(tz))  // a client's local view of a date
//
// The application zone comes from APP_TIMEZONE and is loaded when the package is imported.
// Client zones are stored per client and fall back to America/New_York.
package timezone
