package integration

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/rbac/domain"
)

// memoryStore is an in-memory access-control store. It backs the API flow
// tests so the full HTTP stack runs without a database, while keeping the
// active-flag semantics of the SQL repositories.
type memoryStore struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	roles     map[string]*domain.Role
	perms     map[string]*domain.Permission
	userRoles map[uuid.UUID]map[uuid.UUID]bool
	rolePerms map[uuid.UUID]map[uuid.UUID]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:     make(map[string]*domain.User),
		roles:     make(map[string]*domain.Role),
		perms:     make(map[string]*domain.Permission),
		userRoles: make(map[uuid.UUID]map[uuid.UUID]bool),
		rolePerms: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (s *memoryStore) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return domain.ErrUserAlreadyExists
	}
	copied := *user
	s.users[user.Username] = &copied
	return nil
}

func (s *memoryStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, exists := s.users[username]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memoryStore) UpdateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, exists := s.users[user.Username]
	if !exists {
		return domain.ErrUserNotFound
	}
	stored.Email = user.Email
	stored.OrganizationID = user.OrganizationID
	return nil
}

func (s *memoryStore) SetUserActive(ctx context.Context, username string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, exists := s.users[username]
	if !exists {
		return domain.ErrUserNotFound
	}
	user.IsActive = active
	return nil
}

func (s *memoryStore) SetPassword(ctx context.Context, username string, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, exists := s.users[username]
	if !exists {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = &passwordHash
	return nil
}

func (s *memoryStore) CreateRole(ctx context.Context, role *domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.roles[role.Name]; exists {
		return domain.ErrRoleAlreadyExists
	}
	copied := *role
	s.roles[role.Name] = &copied
	return nil
}

func (s *memoryStore) GetRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	role, exists := s.roles[name]
	if !exists {
		return nil, domain.ErrRoleNotFound
	}
	copied := *role
	return &copied, nil
}

func (s *memoryStore) SetRoleActive(ctx context.Context, name string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	role, exists := s.roles[name]
	if !exists {
		return domain.ErrRoleNotFound
	}
	role.IsActive = active
	return nil
}

func (s *memoryStore) ListRoles(ctx context.Context, offset, limit int) ([]*domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	roles := make([]*domain.Role, 0, len(s.roles))
	for _, role := range s.roles {
		copied := *role
		roles = append(roles, &copied)
	}
	if offset >= len(roles) {
		return nil, nil
	}
	roles = roles[offset:]
	if limit < len(roles) {
		roles = roles[:limit]
	}
	return roles, nil
}

func (s *memoryStore) CreatePermission(ctx context.Context, permission *domain.Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := permission.Key()
	if _, exists := s.perms[key]; exists {
		return domain.ErrPermissionAlreadyExists
	}
	copied := *permission
	s.perms[key] = &copied
	return nil
}

func (s *memoryStore) GetPermission(ctx context.Context, resource, action string) (*domain.Permission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	permission, exists := s.perms[resource+":"+action]
	if !exists {
		return nil, domain.ErrPermissionNotFound
	}
	copied := *permission
	return &copied, nil
}

func (s *memoryStore) AssignRoleToUser(ctx context.Context, userID, roleID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userRoles[userID] == nil {
		s.userRoles[userID] = make(map[uuid.UUID]bool)
	}
	s.userRoles[userID][roleID] = true
	return nil
}

func (s *memoryStore) RevokeRoleFromUser(ctx context.Context, userID, roleID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.userRoles[userID], roleID)
	return nil
}

func (s *memoryStore) GrantPermissionToRole(ctx context.Context, roleID, permissionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rolePerms[roleID] == nil {
		s.rolePerms[roleID] = make(map[uuid.UUID]bool)
	}
	s.rolePerms[roleID][permissionID] = true
	return nil
}

func (s *memoryStore) RevokePermissionFromRole(ctx context.Context, roleID, permissionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rolePerms[roleID], permissionID)
	return nil
}

// activePermissions walks user -> active roles -> active permissions, the
// same join the SQL repositories express in their queries.
func (s *memoryStore) activePermissions(username string) []*domain.Permission {
	user, exists := s.users[username]
	if !exists || !user.IsActive {
		return nil
	}

	var result []*domain.Permission
	for _, role := range s.roles {
		if !role.IsActive || !s.userRoles[user.ID][role.ID] {
			continue
		}
		for _, permission := range s.perms {
			if permission.IsActive && s.rolePerms[role.ID][permission.ID] {
				result = append(result, permission)
			}
		}
	}
	return result
}

func (s *memoryStore) HasActivePermission(ctx context.Context, username, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, permission := range s.activePermissions(username) {
		if permission.Resource == resource && permission.Action == action {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) GetActiveRoleNames(ctx context.Context, username string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, exists := s.users[username]
	if !exists || !user.IsActive {
		return nil, nil
	}
	var names []string
	for _, role := range s.roles {
		if role.IsActive && s.userRoles[user.ID][role.ID] {
			names = append(names, role.Name)
		}
	}
	return names, nil
}

func (s *memoryStore) GetActivePermissionKeys(ctx context.Context, username string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool)
	var keys []string
	for _, permission := range s.activePermissions(username) {
		if !seen[permission.Key()] {
			seen[permission.Key()] = true
			keys = append(keys, permission.Key())
		}
	}
	return keys, nil
}

// noopTxManager runs the function without a real transaction. The memory
// store applies each mutation atomically on its own.
type noopTxManager struct{}

func (noopTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
