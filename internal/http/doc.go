// Package http provides HTTP handlers and middleware for the scheduler API.
//
// The router exposes the following endpoints:
//   - POST /sessions: issues a session token. Body: {"username","password"}.
//     The token is returned in the body and also surfaced via the
//     `X-Session-Token` header and a `session_token` cookie. Login failures
//     are reported in French when the client sends Accept-Language: fr.
//   - DELETE /sessions/current: revokes the current session token extracted
//     from the Authorization header or session cookie and clears the cookie.
//   - DELETE /sessions/{token}: administrator revocation of another user's
//     session. Unknown tokens answer 404.
//   - GET/POST /appointments, GET/PUT/DELETE /appointments/{id}: appointment
//     management exchanging the `appointmentDTO` payload defined in
//     appointment_handler.go. Listing supports customer_id, week=YYYY-MM-DD,
//     month=YYYY-MM, starts_after and ends_before query parameters.
//   - GET /appointments/upcoming: appointments starting within the next
//     `within` duration (default 15m), used for the sign-in reminder.
//   - GET/POST /customers, GET/PUT/DELETE /customers/{id}: customer
//     management. Deleting a customer also removes their appointments.
//   - GET /contacts, GET /contacts/{id}, GET /countries, GET /divisions:
//     read-only directory data; /divisions accepts a country_id filter.
//   - GET/POST /users, GET/PUT/DELETE /users/{id}: administrator controlled
//     user management.
//   - GET /reports/appointments-by-type-month, /reports/contact-schedule,
//     /reports/customer-hours: the three aggregate reports.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
