package auth

// Role names carried in JWT claims
const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleCustomer = "CUSTOMER"
	RoleStaff    = "STAFF"
)

// Operation identifies a protected API operation
type Operation string

// Protected operations. Product reads are public and have no entry here.
const (
	OpCartRead   Operation = "cart:read"
	OpCartModify Operation = "cart:modify"

	OpOrdersList          Operation = "orders:list"
	OpOrdersRead          Operation = "orders:read"
	OpOrdersCreate        Operation = "orders:create"
	OpOrdersUpdateStatus  Operation = "orders:update-status"
	OpOrdersUpdatePayment Operation = "orders:update-payment"
	OpOrdersCancel        Operation = "orders:cancel"

	OpProductsWrite Operation = "products:write"

	OpCustomersList   Operation = "customers:list"
	OpCustomersRead   Operation = "customers:read"
	OpCustomersWrite  Operation = "customers:write"
	OpCustomersUpdate Operation = "customers:update"
	OpCustomersDelete Operation = "customers:delete"

	OpUsersManage Operation = "users:manage"
	OpUsersRead   Operation = "users:read"
	OpUsersUpdate Operation = "users:update"
)

// permissions maps each operation to the roles allowed to perform it
var permissions = map[Operation][]string{
	OpCartRead:   {RoleAdmin, RoleManager, RoleCustomer},
	OpCartModify: {RoleAdmin, RoleManager, RoleCustomer},

	OpOrdersList:          {RoleAdmin, RoleManager},
	OpOrdersRead:          {RoleAdmin, RoleManager, RoleCustomer},
	OpOrdersCreate:        {RoleAdmin, RoleManager, RoleCustomer},
	OpOrdersUpdateStatus:  {RoleAdmin, RoleManager},
	OpOrdersUpdatePayment: {RoleAdmin, RoleManager},
	OpOrdersCancel:        {RoleAdmin, RoleManager, RoleCustomer},

	OpProductsWrite: {RoleAdmin, RoleManager},

	OpCustomersList:   {RoleAdmin, RoleManager},
	OpCustomersRead:   {RoleAdmin, RoleManager, RoleCustomer},
	OpCustomersWrite:  {RoleAdmin, RoleManager},
	OpCustomersUpdate: {RoleAdmin, RoleManager, RoleCustomer},
	OpCustomersDelete: {RoleAdmin},

	OpUsersManage: {RoleAdmin},
	OpUsersRead:   {RoleAdmin, RoleCustomer},
	OpUsersUpdate: {RoleAdmin, RoleCustomer},
}

// Allowed reports whether any of the given roles may perform the operation.
// Unknown operations are denied.
func Allowed(op Operation, roles []string) bool {
	allowed, ok := permissions[op]
	if !ok {
		return false
	}
	for _, role := range roles {
		for _, a := range allowed {
			if role == a {
				return true
			}
		}
	}
	return false
}
