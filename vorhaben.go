// Package vorhaben extracts planning-project ("Vorhaben") records from the
// City of Jena's project list and assembles them into a stable JSON document.
//
// This package contains domain types, the section-extraction core and the
// interfaces of its collaborators, following Ben Johnson's Standard Package
// Layout. Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, sqlite/, yaml/).
package vorhaben
