package auth

// Permission constants define the available permissions in the system.
// These are used for role-based access control (RBAC) to restrict access
// to specific resources and actions. Roles carry these as flags in their
// permissions map; guards check them through the Resolver.
const (
	// PermUsersRead allows viewing member accounts.
	PermUsersRead = "users:read"
	// PermUsersCreate allows creating member accounts.
	PermUsersCreate = "users:create"
	// PermUsersUpdate allows editing member accounts.
	PermUsersUpdate = "users:update"
	// PermUsersDelete allows deleting member accounts.
	PermUsersDelete = "users:delete"

	// PermRolesRead allows viewing roles.
	PermRolesRead = "roles:read"
	// PermRolesCreate allows creating roles.
	PermRolesCreate = "roles:create"
	// PermRolesUpdate allows editing roles.
	PermRolesUpdate = "roles:update"
	// PermRolesDelete allows deleting roles.
	PermRolesDelete = "roles:delete"
	// PermRolesAssign allows assigning roles to users.
	PermRolesAssign = "roles:assign"

	// PermShootersRead allows viewing shooter profiles.
	PermShootersRead = "shooters:read"
	// PermShootersCreate allows registering shooters.
	PermShootersCreate = "shooters:create"
	// PermShootersUpdate allows editing shooter profiles.
	PermShootersUpdate = "shooters:update"
	// PermShootersDelete allows deleting shooter profiles.
	PermShootersDelete = "shooters:delete"
	// PermShootersClassify allows assigning classification categories.
	PermShootersClassify = "shooters:classify"

	// PermCompetitionsRead allows viewing competitions.
	PermCompetitionsRead = "competitions:read"
	// PermCompetitionsCreate allows creating competitions.
	PermCompetitionsCreate = "competitions:create"
	// PermCompetitionsUpdate allows editing competitions.
	PermCompetitionsUpdate = "competitions:update"
	// PermCompetitionsDelete allows deleting competitions.
	PermCompetitionsDelete = "competitions:delete"

	// PermScoresRead allows viewing scores.
	PermScoresRead = "scores:read"
	// PermScoresCreate allows entering scores.
	PermScoresCreate = "scores:create"
	// PermScoresUpdate allows correcting scores.
	PermScoresUpdate = "scores:update"

	// PermNewsRead allows viewing news articles.
	PermNewsRead = "news:read"
	// PermNewsCreate allows publishing news articles.
	PermNewsCreate = "news:create"
	// PermNewsUpdate allows editing news articles.
	PermNewsUpdate = "news:update"
	// PermNewsDelete allows deleting news articles.
	PermNewsDelete = "news:delete"

	// PermEventsRead allows viewing events.
	PermEventsRead = "events:read"
	// PermEventsCreate allows creating events.
	PermEventsCreate = "events:create"
	// PermEventsUpdate allows editing events.
	PermEventsUpdate = "events:update"
	// PermEventsDelete allows deleting events.
	PermEventsDelete = "events:delete"

	// PermAuditRead allows querying the audit trail.
	PermAuditRead = "audit:read"

	// PermSystemAdmin marks full administrative access.
	PermSystemAdmin = "system:admin"
)
