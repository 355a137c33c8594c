// Package domain contains the core business entities and value objects of
// the case-management system: tenants, aggregate case statistics, and the
// notification vocabulary shared by the async processing layer. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
