// Package adminsdk holds the wire types of the Intlakaa admin API and a small
// Go client for it.
//
// Every response uses the same envelope:
//
//	{"success": true, "message": "...", "data": {...}}
//	{"success": false, "message": "...", "errors": {"field": "reason"}}
//
// Unauthenticated operations hang off Client; operations that need an admin
// token hang off Session, which is obtained from Client.Login or
// Client.AcceptInvite.
//
// Example:
//
//	c := adminsdk.NewClient("http://localhost:5001")
//	sess, err := c.Login(ctx, "owner@example.com", "password")
//	if err != nil {
//		return err
//	}
//	leads, err := sess.ListRequests(ctx, adminsdk.StatusPending)
package adminsdk
