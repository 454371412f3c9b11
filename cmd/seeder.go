package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/gym-management/internal/absence"
	"github.com/frahmantamala/gym-management/internal/audit"
	"github.com/frahmantamala/gym-management/internal/auth"
	"github.com/frahmantamala/gym-management/internal/campaign"
	"github.com/frahmantamala/gym-management/internal/campaignlog"
	"github.com/frahmantamala/gym-management/internal/companytx"
	"github.com/frahmantamala/gym-management/internal/member"
	"github.com/frahmantamala/gym-management/internal/transaction"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with one user per role plus sample members, transactions and campaigns.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, model := range []any{
				&audit.ActivityLog{}, &campaignlog.CampaignLog{}, &campaign.Campaign{},
				&absence.Absence{}, &transaction.Transaction{}, &companytx.CompanyTransaction{},
				&member.Member{}, &auth.User{},
			} {
				if err := db.Where("1 = 1").Delete(model).Error; err != nil {
					log.Fatalf("failed to clear table: %v", err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

		users := []auth.User{
			{Email: "owner@gym.com", Name: "Gym Owner", Role: auth.RoleOwner},
			{Email: "frontoffice@gym.com", Name: "Front Office Staff", Role: auth.RoleFrontOffice},
			{Email: "accounting@gym.com", Name: "Accounting Staff", Role: auth.RoleAccounting},
			{Email: "marketing@gym.com", Name: "Marketing Staff", Role: auth.RoleMarketing},
			{Email: "supervisor@gym.com", Name: "Supervisor", Role: auth.RoleSupervisor},
		}
		byRole := map[auth.Role]string{}
		for _, u := range users {
			existing := auth.User{}
			err := db.Where("email = ?", u.Email).First(&existing).Error
			if err == nil {
				byRole[u.Role] = existing.ID
				continue
			}
			u.ID = uuid.NewString()
			u.PasswordHash = string(hash)
			u.IsActive = true
			if err := db.Create(&u).Error; err != nil {
				log.Fatalf("failed to seed user %s: %v", u.Email, err)
			}
			byRole[u.Role] = u.ID
			fmt.Println("Seeded user:", u.Email)
		}

		frontOfficeID := byRole[auth.RoleFrontOffice]
		accountingID := byRole[auth.RoleAccounting]
		marketingID := byRole[auth.RoleMarketing]

		yy := time.Now().Format("06")
		memberIDs := map[string]string{}
		sampleMembers := []struct {
			code, name, email, phone, address, gender string
		}{
			{"MEM" + yy + "0001", "John Doe", "john.doe@example.com", "+1234567890", "123 Main St, City", member.GenderMale},
			{"MEM" + yy + "0002", "Jane Smith", "jane.smith@example.com", "+1234567891", "456 Oak Ave, City", member.GenderFemale},
			{"MEM" + yy + "0003", "Mike Johnson", "mike.j@example.com", "+1234567892", "789 Pine Rd, City", member.GenderMale},
		}
		for _, sm := range sampleMembers {
			existing := member.Member{}
			if err := db.Where("member_code = ?", sm.code).First(&existing).Error; err == nil {
				memberIDs[sm.code] = existing.ID
				continue
			}
			email, phone, address, gender := sm.email, sm.phone, sm.address, sm.gender
			m := member.Member{
				ID:          uuid.NewString(),
				MemberCode:  sm.code,
				Name:        sm.name,
				Email:       &email,
				Phone:       &phone,
				Address:     &address,
				Gender:      &gender,
				IsActive:    true,
				CreatedByID: frontOfficeID,
			}
			if err := db.Create(&m).Error; err != nil {
				log.Fatalf("failed to seed member %s: %v", sm.code, err)
			}
			memberIDs[sm.code] = m.ID
			fmt.Println("Seeded member:", sm.code)
		}

		var txCount int64
		db.Model(&transaction.Transaction{}).Count(&txCount)
		if txCount == 0 {
			now := time.Now()
			membershipDesc := "Monthly membership fee"
			trainingDesc := "Personal training session package"
			card := "CREDIT_CARD"
			cash := "CASH"
			txs := []transaction.Transaction{
				{
					ID:              uuid.NewString(),
					TransactionCode: "TRX00000001",
					MemberID:        memberIDs["MEM"+yy+"0001"],
					Type:            transaction.TypeMembershipFee,
					Amount:          50,
					Description:     &membershipDesc,
					PaymentMethod:   &card,
					Status:          transaction.StatusCompleted,
					DueDate:         now,
					PaidDate:        &now,
					CreatedByID:     frontOfficeID,
				},
				{
					ID:              uuid.NewString(),
					TransactionCode: "TRX00000002",
					MemberID:        memberIDs["MEM"+yy+"0002"],
					Type:            transaction.TypePersonalTraining,
					Amount:          100,
					Description:     &trainingDesc,
					PaymentMethod:   &cash,
					Status:          transaction.StatusPending,
					DueDate:         now.AddDate(0, 0, 7),
					CreatedByID:     frontOfficeID,
				},
			}
			if err := db.Create(&txs).Error; err != nil {
				log.Fatalf("failed to seed member transactions: %v", err)
			}
			fmt.Println("Seeded sample member transactions")
		}

		var ctxCount int64
		db.Model(&companytx.CompanyTransaction{}).Count(&ctxCount)
		if ctxCount == 0 {
			feesDesc := "Monthly membership fees collection"
			rentDesc := "Monthly gym rent"
			equipDesc := "New dumbbells purchase"
			ctxs := []companytx.CompanyTransaction{
				{
					ID:              uuid.NewString(),
					TransactionCode: "CTRX00000001",
					Type:            companytx.TypeIncome,
					Category:        "Membership Fees",
					Amount:          5000,
					Description:     &feesDesc,
					Status:          companytx.StatusCompleted,
					TransactionDate: time.Now(),
					CreatedByID:     accountingID,
				},
				{
					ID:              uuid.NewString(),
					TransactionCode: "CTRX00000002",
					Type:            companytx.TypeExpense,
					Category:        "Rent",
					Amount:          2000,
					Description:     &rentDesc,
					Status:          companytx.StatusCompleted,
					TransactionDate: time.Now(),
					CreatedByID:     accountingID,
				},
				{
					ID:              uuid.NewString(),
					TransactionCode: "CTRX00000003",
					Type:            companytx.TypeExpense,
					Category:        "Equipment",
					Amount:          500,
					Description:     &equipDesc,
					Status:          companytx.StatusCompleted,
					TransactionDate: time.Now(),
					CreatedByID:     accountingID,
				},
			}
			if err := db.Create(&ctxs).Error; err != nil {
				log.Fatalf("failed to seed company transactions: %v", err)
			}
			fmt.Println("Seeded sample company transactions")
		}

		var campaignCount int64
		db.Model(&campaign.Campaign{}).Count(&campaignCount)
		if campaignCount == 0 {
			desc := "Get fit this summer with our special program"
			budget := 1000.0
			audience := "All members"
			goals := "Increase member engagement and retention"
			endDate := time.Now().AddDate(0, 0, 30)
			c := campaign.Campaign{
				ID:             uuid.NewString(),
				Name:           "Summer Fitness Challenge",
				Description:    &desc,
				Type:           campaign.TypeEvent,
				Status:         campaign.StatusActive,
				Budget:         &budget,
				StartDate:      time.Now(),
				EndDate:        &endDate,
				TargetAudience: &audience,
				Goals:          &goals,
				CreatedByID:    marketingID,
			}
			if err := db.Create(&c).Error; err != nil {
				log.Fatalf("failed to seed campaign: %v", err)
			}

			logDesc := "Launched summer fitness challenge campaign"
			cl := campaignlog.CampaignLog{
				ID:          uuid.NewString(),
				CampaignID:  c.ID,
				Activity:    "Campaign Launch",
				Description: &logDesc,
				Metrics:     datatypes.JSON([]byte(`{"reach": 500, "engagement": 50, "signups": 10}`)),
				LogDate:     time.Now(),
				CreatedByID: marketingID,
			}
			if err := db.Create(&cl).Error; err != nil {
				log.Fatalf("failed to seed campaign log: %v", err)
			}
			fmt.Println("Seeded sample campaign and log")
		}

		fmt.Println("Seed completed successfully")
	},
}
