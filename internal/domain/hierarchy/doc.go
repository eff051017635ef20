// Package hierarchy contiene el motor de jerarquía organizacional y autorización de eventos.
//
// El árbol tiene cuatro niveles (supervisor → coordenador → gerente → admin) y se guarda
// como aristas subordinado → superior. El paquete no conoce la base de datos: recibe un
// EdgeSource inyectado (PostgreSQL, caché o Snapshot en memoria) y expone:
//
//   - OrgGraph: superior directo y subordinados directos.
//   - ClosureResolver: subordinados transitivos según la política del rol.
//   - VisibilityScope: dueños cuyos eventos puede listar un usuario.
//   - AuthorizationGuard: lectura/edición/borrado de un evento concreto.
//   - ReassignmentValidator: cambio de dueño al crear o actualizar.
//
// Todas las operaciones son de solo lectura y seguras para uso concurrente.
package hierarchy
