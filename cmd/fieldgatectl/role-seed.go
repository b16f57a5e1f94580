package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fieldgate/fieldgate/pkg/authz"
	"github.com/fieldgate/fieldgate/pkg/db"
	"github.com/fieldgate/fieldgate/pkg/model"
)

// seedFile is the YAML shape of a role seed document.
type seedFile struct {
	Roles []struct {
		Name   string `yaml:"name"`
		System bool   `yaml:"system"`
	} `yaml:"roles"`
	Inherits []struct {
		Role string `yaml:"role"`
		From string `yaml:"from"`
	} `yaml:"inherits"`
	Grants []struct {
		Role      string `yaml:"role"`
		Resource  string `yaml:"resource"`
		Action    string `yaml:"action"`
		Scope     string `yaml:"scope"`
		CrossTeam bool   `yaml:"cross_team"`
	} `yaml:"grants"`
}

// roleSeedCmd represents the role seed command
var roleSeedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Seed the role hierarchy and permission matrix",
	Long: `Seed the role hierarchy and permission matrix from a YAML file.

Role names must be members of the fixed nine-role hierarchy; hierarchy
levels come from the level table, never from the seed file. Seeding is
idempotent: existing rows are left untouched.

Example:
  fieldgatectl role seed roles.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := seedRoles(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed roles: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	roleCmd.AddCommand(roleSeedCmd)
}

func roleID(name string) string {
	return "role-" + name
}

func permissionID(resource, action, scope string) string {
	return strings.ToLower(fmt.Sprintf("perm-%s-%s-%s", resource, action, scope))
}

func seedRoles(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(content, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	hierarchy := authz.DefaultHierarchy()

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	return database.Transaction(func(tx *gorm.DB) error {
		insert := func(value any) error {
			return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(value).Error
		}

		for _, r := range seed.Roles {
			if _, err := authz.RoleNameString(r.Name); err != nil {
				return fmt.Errorf("unknown role %q", r.Name)
			}
			role := model.Role{
				ID:             roleID(r.Name),
				Name:           r.Name,
				HierarchyLevel: hierarchy.Level(r.Name),
				IsSystemRole:   r.System,
				Active:         true,
			}
			if err := insert(&role); err != nil {
				return fmt.Errorf("failed to seed role %q: %w", r.Name, err)
			}
		}

		for _, edge := range seed.Inherits {
			for _, name := range []string{edge.Role, edge.From} {
				if _, err := authz.RoleNameString(name); err != nil {
					return fmt.Errorf("unknown role %q in inherits", name)
				}
			}
			inheritance := model.RoleInheritance{
				RoleID:         roleID(edge.Role),
				InheritsRoleID: roleID(edge.From),
			}
			if err := insert(&inheritance); err != nil {
				return fmt.Errorf("failed to seed inheritance %s -> %s: %w", edge.Role, edge.From, err)
			}
		}

		for _, g := range seed.Grants {
			if _, err := authz.RoleNameString(g.Role); err != nil {
				return fmt.Errorf("unknown role %q in grants", g.Role)
			}
			if _, err := authz.ResourceString(g.Resource); err != nil {
				return fmt.Errorf("unknown resource %q", g.Resource)
			}
			if _, err := authz.ActionString(g.Action); err != nil {
				return fmt.Errorf("unknown action %q", g.Action)
			}
			if _, err := authz.ScopeString(g.Scope); err != nil {
				return fmt.Errorf("unknown scope %q", g.Scope)
			}

			permission := model.Permission{
				ID:       permissionID(g.Resource, g.Action, g.Scope),
				Resource: g.Resource,
				Action:   g.Action,
				Scope:    g.Scope,
				Active:   true,
			}
			if err := insert(&permission); err != nil {
				return fmt.Errorf("failed to seed permission %s: %w", permission.ID, err)
			}

			rolePermission := model.RolePermission{
				RoleID:       roleID(g.Role),
				PermissionID: permission.ID,
				CrossTeam:    g.CrossTeam,
			}
			if err := insert(&rolePermission); err != nil {
				return fmt.Errorf("failed to seed grant %s -> %s: %w", g.Role, permission.ID, err)
			}
		}

		fmt.Printf("Seeded %d roles, %d inheritance edges, %d grants\n",
			len(seed.Roles), len(seed.Inherits), len(seed.Grants))
		return nil
	})
}
