// Seeds a demo company with the default shift, leave types and a pair
// of employees, then prints access tokens for poking the API locally.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/config"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/clockwise-backend-go/internal/fixtures"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hr/clockwise-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shiftRepo := postgresql.NewShiftRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	companyID := uuid.Must(uuid.NewV7()).String()

	sh, err := shiftRepo.Create(ctx, fixtures.GetDefaultShift(companyID))
	if err != nil {
		fmt.Println("Error seeding default shift:", err)
		os.Exit(1)
	}

	for _, lt := range fixtures.GetDefaultLeaveTypes(companyID) {
		lt := lt
		if err := leaveTypeRepo.Create(ctx, &lt); err != nil {
			fmt.Println("Error seeding leave type:", err)
			os.Exit(1)
		}
	}

	admin, err := employeeRepo.Create(ctx, employee.Employee{
		CompanyID: companyID,
		ShiftID:   sh.ID,
		FullName:  "Demo Admin",
		IsActive:  true,
		HireDate:  time.Now().UTC().AddDate(-1, 0, 0),
	})
	if err != nil {
		fmt.Println("Error seeding admin employee:", err)
		os.Exit(1)
	}

	staff, err := employeeRepo.Create(ctx, employee.Employee{
		CompanyID: companyID,
		ShiftID:   sh.ID,
		FullName:  "Demo Employee",
		IsActive:  true,
		HireDate:  time.Now().UTC().AddDate(0, -3, 0),
	})
	if err != nil {
		fmt.Println("Error seeding employee:", err)
		os.Exit(1)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	adminToken, _, err := jwtService.GenerateAccessToken(admin.ID, admin.ID, companyID, true)
	if err != nil {
		fmt.Println("Error generating admin token:", err)
		os.Exit(1)
	}
	staffToken, _, err := jwtService.GenerateAccessToken(staff.ID, staff.ID, companyID, false)
	if err != nil {
		fmt.Println("Error generating employee token:", err)
		os.Exit(1)
	}

	fmt.Println("Seeded demo company", companyID)
	fmt.Println("  shift:          ", sh.ID)
	fmt.Println("  admin:          ", admin.ID)
	fmt.Println("  employee:       ", staff.ID)
	fmt.Println("  admin token:    ", adminToken)
	fmt.Println("  employee token: ", staffToken)
}
