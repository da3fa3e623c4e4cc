package rental

import (
	"strings"
	"time"
)

// Role is the access role of a user account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleOwner   Role = "owner"
	RoleTenant  Role = "tenant"
	RoleVendor  Role = "vendor"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleManager, RoleOwner, RoleTenant, RoleVendor}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleOwner, RoleTenant, RoleVendor:
		return true
	}

	return false
}

// Plural is the recipient group name for the role, e.g. "tenants".
func (r Role) Plural() string {
	return string(r) + "s"
}

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentDue  PaymentStatus = "Due"
	PaymentPaid PaymentStatus = "Paid"
)

// MaintenanceStatus represents the lifecycle state of a maintenance request.
type MaintenanceStatus string

const (
	MaintenanceNew       MaintenanceStatus = "New"
	MaintenanceAssigned  MaintenanceStatus = "Assigned"
	MaintenanceCompleted MaintenanceStatus = "Completed"
)

// LedgerType represents the direction of a ledger entry (income or expense).
type LedgerType string

const (
	LedgerIncome  LedgerType = "Income"
	LedgerExpense LedgerType = "Expense"
)

func (t LedgerType) Valid() bool {
	return t == LedgerIncome || t == LedgerExpense
}

// Priority of a maintenance request.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}

	return false
}

const (
	DefaultLeadStage = "New"
	RentPaymentMemo  = "Rent Payment"
	RecipientAll     = "all"
)

// User is a login identity.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Role         Role   `json:"role"`
}

type Property struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	OwnerID   *int64 `json:"ownerId"`
	ManagerID *int64 `json:"managerId"`
}

// Unit is a rentable unit of a property. TenantID holds the occupant's user id.
type Unit struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"propertyId"`
	Number     string `json:"number"`
	Rent       int64  `json:"rent"` // Rent in cents
	Occupied   bool   `json:"occupied"`
	TenantID   *int64 `json:"tenantId"`
}

// Tenant is a renter, backed 1:1 by a user account with role tenant.
type Tenant struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	PropertyID int64  `json:"propertyId"`
	UnitID     int64  `json:"unitId"`
}

type Lease struct {
	ID         int64 `json:"id"`
	TenantID   int64 `json:"tenantId"`
	PropertyID int64 `json:"propertyId"`
	UnitID     int64 `json:"unitId"`
	StartDate  Date  `json:"startDate"`
	EndDate    Date  `json:"endDate"`
	Rent       int64 `json:"rent"` // Rent in cents
}

type Payment struct {
	ID         int64         `json:"id"`
	TenantID   int64         `json:"tenantId"`
	PropertyID int64         `json:"propertyId"`
	UnitID     int64         `json:"unitId"`
	LeaseID    int64         `json:"leaseId"`
	Amount     int64         `json:"amount"` // Amount in cents
	DueDate    Date          `json:"dueDate"`
	Status     PaymentStatus `json:"status"`
	PaidDate   *Date         `json:"paidDate"`
}

// LedgerEntry is an income or expense record. PaymentID is set for entries
// produced by settling a payment.
type LedgerEntry struct {
	ID          int64      `json:"id"`
	Date        Date       `json:"date"`
	Description string     `json:"description"`
	Amount      int64      `json:"amount"` // Amount in cents
	Type        LedgerType `json:"type"`
	PaymentID   *int64     `json:"paymentId,omitempty"`
}

type MaintenanceRequest struct {
	ID          int64             `json:"id"`
	TenantID    int64             `json:"tenantId"`
	PropertyID  int64             `json:"propertyId"`
	UnitID      int64             `json:"unitId"`
	Description string            `json:"description"`
	Priority    Priority          `json:"priority"`
	Status      MaintenanceStatus `json:"status"`
	VendorID    *int64            `json:"vendorId"`
	Date        Date              `json:"date"`
}

type Lead struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Stage string `json:"stage"`
	Notes string `json:"notes"`
}

type Message struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"senderId"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Recipients []string  `json:"recipients"`
	Date       time.Time `json:"date"`
}

// File is a document record. The content itself lives outside the store,
// referenced by UploadID.
type File struct {
	ID          int64    `json:"id"`
	UploadID    string   `json:"uploadId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Date        Date     `json:"date"`
}

// Data is the application-data document.
type Data struct {
	Properties          []Property           `json:"properties"`
	Units               []Unit               `json:"units"`
	Tenants             []Tenant             `json:"tenants"`
	Leases              []Lease              `json:"leases"`
	Payments            []Payment            `json:"payments"`
	MaintenanceRequests []MaintenanceRequest `json:"maintenanceRequests"`
	Expenses            []LedgerEntry        `json:"expenses"`
	Leads               []Lead               `json:"leads"`
	Messages            []Message            `json:"messages"`
	Files               []File               `json:"files"`
}

// Normalize replaces missing collections with empty ones.
func (d *Data) Normalize() {
	d.Properties = orEmpty(d.Properties)
	d.Units = orEmpty(d.Units)
	d.Tenants = orEmpty(d.Tenants)
	d.Leases = orEmpty(d.Leases)
	d.Payments = orEmpty(d.Payments)
	d.MaintenanceRequests = orEmpty(d.MaintenanceRequests)
	d.Expenses = orEmpty(d.Expenses)
	d.Leads = orEmpty(d.Leads)
	d.Messages = orEmpty(d.Messages)
	d.Files = orEmpty(d.Files)
}

// State is the whole store: the users document and the application-data document.
type State struct {
	Users []User
	Data  Data
}

// NewState returns an empty store.
func NewState() *State {
	st := &State{Users: []User{}}
	st.Data.Normalize()

	return st
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
