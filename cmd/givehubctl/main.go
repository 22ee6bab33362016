// givehubctl is the administrative CLI. It operates directly on the
// database, bypassing the HTTP API and its authentication.
package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/givehub/backend/internal/config"
	"github.com/givehub/backend/internal/models"
	"github.com/shopspring/decimal"
)

type SeedCmd struct {
	Email string `required:"" help:"Email address of the initial administrator."`
	Name  string `help:"Display name of the initial administrator."`
}

func (cmd *SeedCmd) Run() error {
	// Creates the settings singleton with its defaults
	if _, err := models.ActiveSettings(); err != nil {
		return err
	}

	admin := models.User{
		Email: cmd.Email,
		Name:  cmd.Name,
		Role:  models.RoleAdmin,
	}
	if err := models.DB.Create(&admin).Error; err != nil {
		return err
	}

	models.RecordAuditEvent("user.seeded", admin.ID, fmt.Sprintf("administrator %s created", admin.Email))

	// The token is shown exactly once, it cannot be recovered later.
	fmt.Printf("Administrator %s created.\nAPI token: %s\n", admin.Email, admin.APIToken)
	return nil
}

type CreateCauseCmd struct {
	Name     string  `required:"" help:"Name of the cause, unique across the platform."`
	Creator  string  `required:"" help:"Email address of the administrator creating the cause."`
	Target   string  `help:"Target amount, 0 for open-ended causes." default:"0"`
	Category string  `help:"Cause category." default:"other"`
	Note     string  `help:"Description shown to donors."`
	EndDate  *string `help:"Last day donations are accepted, RFC 3339."`
}

func (cmd *CreateCauseCmd) Run() error {
	var creator models.User
	err := models.DB.Where("email = ?", cmd.Creator).First(&creator).Error
	if err != nil {
		return err
	}

	target, err := decimal.NewFromString(cmd.Target)
	if err != nil {
		return fmt.Errorf("parsing the target amount failed: %w", err)
	}

	cause := models.Cause{
		Name:         cmd.Name,
		Note:         cmd.Note,
		Category:     models.CauseCategory(cmd.Category),
		TargetAmount: target,
		CreatedByID:  creator.ID,
	}

	if cmd.EndDate != nil {
		endDate, err := time.Parse(time.RFC3339, *cmd.EndDate)
		if err != nil {
			return fmt.Errorf("parsing the end date failed: %w", err)
		}
		cause.EndDate = &endDate
	}

	if err := models.DB.Create(&cause).Error; err != nil {
		return err
	}

	models.RecordAuditEvent("cause.created", creator.ID, fmt.Sprintf("cause %s created", cause.Name))

	fmt.Printf("Cause %s created with ID %s.\n", cause.Name, cause.ID)
	return nil
}

type PromoteCmd struct {
	Email string `arg:"" help:"Email address of the user to promote to administrator."`
}

func (cmd *PromoteCmd) Run() error {
	var user models.User
	err := models.DB.Where("email = ?", cmd.Email).First(&user).Error
	if err != nil {
		return err
	}

	user.Role = models.RoleAdmin
	if err := models.DB.Save(&user).Error; err != nil {
		return err
	}

	models.RecordAuditEvent("user.promoted", user.ID, fmt.Sprintf("user %s promoted to administrator", user.Email))

	fmt.Printf("User %s is now an administrator.\n", user.Email)
	return nil
}

type CLI struct {
	Seed        SeedCmd        `cmd:"" help:"Create the platform settings and the initial administrator."`
	CreateCause CreateCauseCmd `cmd:"" help:"Create a cause."`
	Promote     PromoteCmd     `cmd:"" help:"Promote a user to administrator."`
}

func main() {
	app := CLI{}

	cntx := kong.Parse(&app,
		kong.Description("givehub administration utilities"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	cfg, err := config.Load()
	cntx.FatalIfErrorf(err)

	err = models.Connect(models.ConnectionOptions{
		Host:     cfg.Database.Host,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		Path:     cfg.Database.Path,
	})
	cntx.FatalIfErrorf(err)

	cntx.FatalIfErrorf(cntx.Run())
}
