package types

// RTTimeLayout is the timestamp format the upstream Request Tracker uses
// in search results, e.g. "Mon Apr 01 14:23:11 2024".
const RTTimeLayout = "Mon Jan 2 15:04:05 2006"

// Well-known upstream field names.
const (
	FieldCreated = "Created"
	FieldStarted = "Started"
	FieldOwner   = "Owner"
	FieldQueue   = "Queue"

	CFCompanyName      = "CF.{Company name}"
	CFDomain           = "CF.{OpenDataHub Domain}"
	CFRequestorType    = "CF.{Type of requestor}"
	CFRequestorUseCase = "CF.{Requestor use case}"
	CFCompanyType      = "CF.{Company type}"
)

// QueueIDM is the queue whose tickets get business overrides applied: the
// domain is forced to Tourism and the requestor classification fields are
// forced to fixed IDM values.
const QueueIDM = "IDM"

// Values forced onto IDM-queue tickets.
const (
	DomainTourism       = "Tourism"
	DomainUnknown       = "Unknown Domain"
	IDMRequestorType    = "IDM"
	IDMRequestorUseCase = "Data consumer"
	IDMCompanyType      = "Publicly held"
)

// MonthLabels are the fixed chart labels, always in calendar order.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
