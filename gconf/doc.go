/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each package keeps a single configuration singleton under the "_c:<pkg>" key.
The configuration is usually created from the genesis file, using InitConfig,
and read by handlers with Load. A configuration that declares an owner can be
patched by a transaction signed by that owner.

Not being able to get a configuration value is a critical condition for the
application and there is no recovery path for the client.
*/
package gconf
