// Package domain contains the core business entities of the service:
// members, financial products, cart items, and search history. The types
// here carry their own validation and state rules and know nothing about
// HTTP, SQL, or any other delivery or persistence mechanism.
package domain
