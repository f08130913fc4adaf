// Package catalog mounts the ownership-guarded delete routes for courses and
// reviews. A course belongs to its instructor and a review to its author;
// moderators and admins may delete either.
package catalog
