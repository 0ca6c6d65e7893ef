package memory

import (
	"testing"

	"relicore/testutil"
)

func TestNoServiceLayerImports(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.ServiceImportForbidden,
		"persistence backends depend only on the domain package")
}
