package generator

import (
	"testing"

	"github.com/koustreak/schemagen/internal/errs"
	"github.com/koustreak/schemagen/internal/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubKind(t *testing.T) {
	tests := []struct {
		kind    StubKind
		name    string
		label   string
		factory string
		folder  string
	}{
		{Controller, "controller", "controller", "createCoreController", "controllers"},
		{Service, "service", "service", "createCoreService", "services"},
		{Route, "route", "router", "createCoreRouter", "routes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.label, tt.kind.Label())
			assert.Equal(t, tt.factory, tt.kind.Factory())
			assert.Equal(t, tt.folder, tt.kind.Folder())
		})
	}

	assert.Equal(t, []StubKind{Controller, Service, Route}, StubKinds)
	assert.Equal(t, "StubKind(7)", StubKind(7).String())
}

func TestRenderStub_JS(t *testing.T) {
	info := naming.NewModuleInfo("tbl_product", "tbl_", "")

	got, err := RenderStub(info, Route, "js")
	require.NoError(t, err)

	want := `'use strict';

/**
 * product router
 */

const { createCoreRouter } = require('@strapi/strapi').factories;

module.exports = createCoreRouter('api::product.product');
`
	assert.Equal(t, want, string(got))
}

func TestRenderStub_TS(t *testing.T) {
	info := naming.NewModuleInfo("order_item", "", "")

	got, err := RenderStub(info, Controller, "ts")
	require.NoError(t, err)

	want := `/**
 * order-item controller
 */

import { factories } from '@strapi/strapi';

export default factories.createCoreController('api::order-item.order-item');
`
	assert.Equal(t, want, string(got))
}

func TestRenderStub_OnlyFactoryDiffers(t *testing.T) {
	info := naming.NewModuleInfo("tbl_user", "tbl_", "")

	for _, kind := range StubKinds {
		got, err := RenderStub(info, kind, "js")
		require.NoError(t, err)
		assert.Contains(t, string(got), kind.Factory()+"('api::user.user')")
		assert.Contains(t, string(got), " * user "+kind.Label()+"\n")
	}
}

func TestRenderStub_UnknownExtension(t *testing.T) {
	_, err := RenderStub(naming.NewModuleInfo("t", "", ""), Service, "py")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))

	assert.True(t, SupportedExtension("js"))
	assert.True(t, SupportedExtension("ts"))
	assert.False(t, SupportedExtension(""))
}

func TestStubPath(t *testing.T) {
	info := naming.NewModuleInfo("tbl_user", "tbl_", "src/api")

	assert.Equal(t, "src/api/user/controllers/user.js", StubPath(info, Controller, "js"))
	assert.Equal(t, "src/api/user/services/user.js", StubPath(info, Service, "js"))
	assert.Equal(t, "src/api/user/routes/user.ts", StubPath(info, Route, "ts"))
}
