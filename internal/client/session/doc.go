// Package session owns the bearer-credential lifecycle on the client:
//
//  1. TokenStore — the single persistent slot the token lives in.
//  2. DecodeClaims — parsing the token's claims segment (no signature check;
//     the server re-validates every call, this is UI gating only).
//  3. Manager — deriving the tri-state session status (unauthenticated,
//     active, expired) from store + claims + wall clock.
//  4. Coordinator — single-flight token renewal: any number of concurrent
//     callers share exactly one refresh call and its outcome.
//
// A Manager and a Coordinator are constructed once at application start and
// passed to whoever needs them; there is no ambient global session.
package session
