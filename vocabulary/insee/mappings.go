package insee

// ClassMap maps M0 record type tokens to the class of their converted resource.
var ClassMap = map[string]string{
	"famille":    ClassFamily,
	"serie":      ClassSeries,
	"operation":  ClassOperation,
	"indicateur": ClassIndicator,
	"organisme":  ClassOrganization,
	"codelist":   ClassConceptScheme,
	"code":       ClassConcept,
	"lien":       ClassDocument,
	"document":   ClassDocument,
}

// ClassFor returns the target class for an M0 type token.
func ClassFor(typeToken string) (string, bool) {
	class, ok := ClassMap[typeToken]
	return class, ok
}

// Role identifies the part an organization plays for an operation-like resource.
type Role int

const (
	// RoleProducer is an organization producing the resource.
	RoleProducer Role = iota
	// RoleStakeholder is an organization with a stake in the resource.
	RoleStakeholder
)

// Roles lists every organizational role in processing order.
var Roles = []Role{RoleProducer, RoleStakeholder}

// RoleSuffix maps each role to the M0 attribute token carrying its associations.
var RoleSuffix = map[Role]string{
	RoleProducer:    "ORGANISATION",
	RoleStakeholder: "STAKEHOLDERS",
}

// RolePredicate maps each role to its registered target predicate.
var RolePredicate = map[Role]string{
	RoleProducer:    OperationCreator,
	RoleStakeholder: OperationContributor,
}

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleProducer:
		return "producer"
	case RoleStakeholder:
		return "stakeholder"
	default:
		return "unknown"
	}
}
