// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cli

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

type cliSuite struct {
	testing.IsolationSuite

	configPath string
}

var _ = gc.Suite(&cliSuite{})

func (s *cliSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.configPath = filepath.Join(c.MkDir(), "paasinfra.yaml")
	err := os.WriteFile(s.configPath, []byte(`
subscription-id: 22222222-2222-2222-2222-222222222222
notification-email: ops@example.com
`), 0o644)
	c.Assert(err, jc.ErrorIsNil)
}

func (s *cliSuite) run(c *gc.C, args ...string) (string, error) {
	opts := &Options{ConfigPath: defaultConfigPath}
	root := newRootCommand(opts)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func (s *cliSuite) TestValidate(c *gc.C) {
	out, err := s.run(c, "validate", "--config", s.configPath)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(out, jc.Contains, "Topology is valid")
	c.Assert(out, jc.Contains, "resource-group (Microsoft.Resources/resourceGroups)")
	c.Assert(out, jc.Contains, "web-app (Microsoft.Web/sites)")
}

func (s *cliSuite) TestValidateRejectsBadConfig(c *gc.C) {
	path := filepath.Join(c.MkDir(), "bad.yaml")
	err := os.WriteFile(path, []byte(`
subscription-id: not-a-uuid
notification-email: ops@example.com
`), 0o644)
	c.Assert(err, jc.ErrorIsNil)

	_, err = s.run(c, "validate", "--config", path)
	c.Assert(err, gc.ErrorMatches, `invalid configuration in .*: subscription-id "not-a-uuid" not valid`)
}

func (s *cliSuite) TestGraph(c *gc.C) {
	out, err := s.run(c, "graph", "--config", s.configPath)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(out, jc.Contains, "digraph topology")
	c.Assert(out, jc.Contains, "Microsoft.Network/privateEndpoints")
}

func (s *cliSuite) TestMissingConfigFile(c *gc.C) {
	_, err := s.run(c, "validate", "--config", filepath.Join(c.MkDir(), "absent.yaml"))
	c.Assert(err, gc.ErrorMatches, `reading configuration from .*`)
}
