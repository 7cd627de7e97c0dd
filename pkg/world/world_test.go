package world_test

import (
	"testing"

	"github.com/worldable/worlddb/internal/iohealth"
	"github.com/worldable/worlddb/internal/ioinstall"
	"github.com/worldable/worlddb/internal/iolink"
	"github.com/worldable/worlddb/internal/ioschema"
	"github.com/worldable/worlddb/internal/ioseed"
	"github.com/worldable/worlddb/internal/iouninstall"
	"github.com/worldable/worlddb/pkg/world"
)

// TestImplementationsSatisfyContracts ensures compile-time contract
// compliance between the io implementations and the world interfaces.
func TestImplementationsSatisfyContracts(t *testing.T) {
	var _ world.SchemaManager = ioschema.NewManager(nil)
	var _ world.Seeder = ioseed.New(nil, nil, nil)
	var _ world.Linker = iolink.New(nil, nil)
	var _ world.Installer = ioinstall.New(nil, nil, nil, nil, nil)
	var _ world.Uninstaller = iouninstall.New(nil, nil)
	var _ world.HealthChecker = iohealth.New(nil, nil)
}
