// Package services contains the core business logic, implementing the
// driving ports in terms of the driven ports. Services hold no
// transport or storage concerns of their own.
package services
