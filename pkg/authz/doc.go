// Package authz implements discretionary access control over three grant
// layers at increasing specificity: individual resources, entity kinds
// (content types), and whole tenants.
//
// The resolution model is a pure union: a grant at any layer is sufficient
// and no layer can veto another. There is no deny grant. Layers are
// checked from most to least specific (resource, content type, tenant)
// purely for short-circuit efficiency; permuting the order never changes
// the outcome. An optional ownership fallback lets the creator of a
// resource through after every grant layer has denied.
//
// Resource kinds are structurally unrelated domain entities, so each kind
// registers a resolver in a Registry once at startup; resolution
// dispatches on the logical kind name and treats unregistered kinds as a
// normal fall-through to coarser layers.
//
// Setup:
//
//	registry := authz.NewRegistry()
//	_ = registry.Register("Product", productGrants, productOwner)
//	_ = registry.Register("Comment", commentGrants, commentOwner)
//
//	svc := authz.NewService(tenantGrants, contentTypeGrants, registry,
//	    authz.WithLogger(log),
//	    authz.WithSnapshotCache(authz.NewLRUSnapshotCache(10_000), 30*time.Second),
//	)
//
// Guarding an endpoint:
//
//	r.With(authz.Require(svc, permissions.Edit,
//	    authz.WithContentType("Product"),
//	    authz.WithResourceParam("productID"),
//	    authz.WithOwnerOverride(),
//	)).Put("/products/{productID}", updateProduct)
//
// The middleware trusts the identity placed in the request context by an
// upstream authenticator and rejects with 401 (no identity), 400 (resource
// id required but absent), or 403 (resolution denied). Infrastructure
// faults during a layer lookup are logged and fall through to the next
// layer rather than failing the request.
package authz
