package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo organisation, admin user, employees and teams.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"logs", "employee_teams", "employees", "teams", "users", "organisations"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		orgName := "Acme Corp"
		adminEmail := "admin@acme.test"

		var orgID int64
		row := db.Raw("SELECT id FROM organisations WHERE name = ?", orgName).Row()
		if err := row.Scan(&orgID); err == nil {
			fmt.Println("demo organisation already exists:", orgName)
			return
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		if err := db.Exec("INSERT INTO organisations (name, created_at, updated_at) VALUES (?, now(), now())", orgName).Error; err != nil {
			log.Fatalf("failed to insert organisation: %v", err)
		}
		if err := db.Raw("SELECT id FROM organisations WHERE name = ?", orgName).Row().Scan(&orgID); err != nil {
			log.Fatalf("failed to lookup organisation id: %v", err)
		}

		if err := db.Exec("INSERT INTO users (organisation_id, email, name, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
			orgID, adminEmail, "Acme Admin", string(hash)).Error; err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}
		fmt.Println("Seeded admin user:", adminEmail)

		employees := []struct {
			FirstName string
			LastName  string
			Email     string
		}{
			{"Ada", "Lovelace", "ada@acme.test"},
			{"Grace", "Hopper", "grace@acme.test"},
			{"Alan", "Turing", "alan@acme.test"},
		}
		for _, e := range employees {
			if err := db.Exec("INSERT INTO employees (organisation_id, first_name, last_name, email, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
				orgID, e.FirstName, e.LastName, e.Email).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.Email, err)
			}
		}

		teams := []struct {
			Name string
			Desc string
		}{
			{"Engineering", "Product engineering"},
			{"Research", "Long-range research"},
		}
		for _, t := range teams {
			if err := db.Exec("INSERT INTO teams (organisation_id, name, description, created_at, updated_at) VALUES (?, ?, ?, now(), now())",
				orgID, t.Name, t.Desc).Error; err != nil {
				log.Fatalf("failed to insert team %s: %v", t.Name, err)
			}
		}

		// Put everyone on the Engineering team.
		var teamID int64
		if err := db.Raw("SELECT id FROM teams WHERE organisation_id = ? AND name = ?", orgID, "Engineering").Row().Scan(&teamID); err != nil {
			log.Fatalf("failed to lookup team id: %v", err)
		}

		rows, err := db.Raw("SELECT id FROM employees WHERE organisation_id = ?", orgID).Rows()
		if err != nil {
			log.Fatalf("failed to list employees: %v", err)
		}
		defer rows.Close()

		var employeeIDs []int64
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				log.Fatalf("failed to scan employee id: %v", err)
			}
			employeeIDs = append(employeeIDs, id)
		}

		for _, employeeID := range employeeIDs {
			if err := db.Exec("INSERT INTO employee_teams (employee_id, team_id, assigned_at) VALUES (?, ?, now())",
				employeeID, teamID).Error; err != nil {
				if err == gorm.ErrDuplicatedKey {
					continue
				}
				log.Fatalf("failed to assign employee %d: %v", employeeID, err)
			}
		}

		fmt.Println("Seeded demo organisation:", orgName)
		fmt.Printf("Login with %s / %s\n", adminEmail, password)
	},
}
